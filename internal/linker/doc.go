// Package linker resolves symbolic node references in a disc graph.
//
// Link walks the attached part of a discgraph.Disc depth first (VMGM, then
// each titleset in declaration order, menus before titles), assigning every
// visited node an ordinal Address and recording it in a Registry. It then
// scans each pre, post and button command for identifier tokens and rewrites
// them into dvdauthor jump syntax. Nodes that exist in memory but were never
// attached are not in the Registry and therefore do not resolve.
//
// Content and reference problems are collected across the whole disc and
// returned together as a *FaultError so callers can fix everything in one
// pass. The source graph is never modified; the resolved command text lives
// in the returned Program.
package linker
