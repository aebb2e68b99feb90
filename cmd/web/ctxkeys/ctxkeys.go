package ctxkeys

type Key int

const (
	CSRFToken Key = iota // string: token for forms and Datastar requests
	Admin                // string: signed-in admin username, "" for visitors
)
