package wire

import (
	"Keystone/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Ledger: config.LedgerConfig{
			Deployer:         "deployer",
			Escrow:           "escrow",
			FeeRate:          200,
			MinTip:           1,
			MaxContentLength: 280,
			DisplayDecimals:  6,
		},
		Bank: config.BankConfig{
			Driver:  "memory",
			Genesis: map[string]uint64{"p-alice": 1_000},
		},
		Cron: config.CronConfig{LedgerAudit: "0 */10 * * * *"},
	}
}

func TestBuildApplication_Memory(t *testing.T) {
	app, err := BuildApplication(context.Background(), nil, nil, memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.KafkaManager)
	assert.NoError(t, app.CronMgr.RegisterJobs())

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuildApplication_RequiresDatabase(t *testing.T) {
	cfg := memoryConfig()
	cfg.Ledger.Journal = true
	_, err := BuildApplication(context.Background(), nil, nil, cfg)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.Bank.Driver = "mysql"
	_, err = BuildApplication(context.Background(), nil, nil, cfg)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.Kafka.Enable = true
	_, err = BuildApplication(context.Background(), nil, nil, cfg)
	assert.Error(t, err)
}

func TestBuildBank_GenesisOnce(t *testing.T) {
	ctx := context.Background()
	b, err := buildBank(ctx, nil, memoryConfig().Bank)
	require.NoError(t, err)
	balance, err := b.Balance(ctx, "p-alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), balance)

	_, err = buildBank(ctx, nil, config.BankConfig{Driver: "paper"})
	assert.Error(t, err)
}
