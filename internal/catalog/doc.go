// Package catalog defines the skill and skill set model shared by every
// catalog source, the Source interface those sources implement, and the
// preparation step that turns a skill set into the input of the leveling
// engine.
//
// Concrete sources live in separate packages: hclcatalog reads local HCL
// files, skilldisplay talks to the SkillDisplay API. MemorySource is the
// in-memory implementation both the HCL loader and tests build on.
package catalog
