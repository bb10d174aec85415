package domain

// Module is a UI section. Modules form a forest through ParentID.
type Module struct {
	ID           string
	Name         string
	Route        string
	Icon         string
	DisplayOrder int
	ParentID     *string
	Audit
}

// ModuleNode is a module with its resolved children, built on demand.
type ModuleNode struct {
	Module
	Children []ModuleNode
}
