// internal/skillid/doc.go

/*
Package skillid provides the identifier type for skills.

An identifier is an opaque, totally ordered integer key assigned by the
catalog the skill comes from. Besides the plain decimal form, identifiers
are accepted in the anchor form `skill_<n>` used by rendered documents, so
cross references can be resolved back to an ID.
*/
package skillid
