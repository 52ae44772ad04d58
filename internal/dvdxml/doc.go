// Package dvdxml writes a linked disc as a dvdauthor XML project.
//
// Element and attribute names follow dvdauthor's schema. The VMGM comes
// first, then every titleset in declaration order; inside each domain menus
// precede titles. Every free-text value is escaped for the five XML reserved
// characters. Output is deterministic: encoding the same Program twice yields
// identical bytes.
package dvdxml
