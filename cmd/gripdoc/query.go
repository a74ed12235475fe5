package main

import "fmt"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Tools.SearchDocs(deps.Ctx, c.Query, c.Source))
	return nil
}

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Tools.GetPage(deps.Ctx, c.Page))
	return nil
}

// Run executes the nodes command.
func (c *NodesCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Tools.SearchNodes(deps.Ctx, c.Query, c.Category))
	return nil
}

// Run executes the node command.
func (c *NodeCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Tools.GetNodeDetails(deps.Ctx, c.Name))
	return nil
}

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Tools.ListCategories(deps.Ctx))
	return nil
}

// Run executes the examples command.
func (c *ExamplesCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Tools.GetCodeExamples(deps.Ctx, c.Topic))
	return nil
}
