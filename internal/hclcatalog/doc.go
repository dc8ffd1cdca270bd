// Package hclcatalog loads skills and skill sets from HCL files and serves
// them as a catalog.Source.
//
// A catalog is any number of .hcl files containing `skill` and `skillset`
// blocks. Files are decoded first and evaluated second, so a skill may refer
// to another skill declared in any file:
//
//	skill "functions" {
//	  id            = 2
//	  title         = "Functions"
//	  prerequisites = [skill.variables.id]
//	}
//
// When no `skillset` block exists the loader synthesizes one holding every
// skill, with ID 0.
package hclcatalog
