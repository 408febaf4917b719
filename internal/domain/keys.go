package domain

type CtxKey string

const (
	KeySessionID CtxKey = "SessionID"
	KeySession   CtxKey = "Session"
)
