package logg

const (
	Layer        = "layer"
	Operation    = "operation"
	Tool         = "tool"
	Selector     = "selector"
	URL          = "url"
	TagID        = "tag_id"
	InvocationID = "invocation_id"
)
