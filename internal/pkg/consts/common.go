package consts

// 上下文中的调用者身份
const (
	PrincipalKey = "principal"
)

const (
	LedgerEventVersion = 1
)
