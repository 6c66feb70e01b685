package ports

// FlagStore is the durable advisory "isLoggedIn" flag persisted in the
// browser. It only decides whether bootstrap calls the session-check
// endpoint at all; it is never the source of truth for authorization.
// Writes complete synchronously before the call returns. A broken store
// reads as "flag not set".
type FlagStore interface {
	SetLoggedInFlag()
	ClearLoggedInFlag()
	IsLoggedInFlagSet() bool
}
