// Package skilldisplay implements catalog.Source on top of the SkillDisplay
// REST API.
//
// Skill records are cached per client in an LRU cache, so a skill that shows
// up in several skill sets or is requested by several serve-mode requests is
// fetched once.
package skilldisplay
