package metrics

// Attribute keys attached to the catalog's instruments.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrOp     = "op"
	AttrResult = "result"
	AttrReason = "reason"
)
