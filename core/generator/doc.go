// Package generator produces the synthetic charging dataset: a station set
// with expansion metrics and a session log referencing it.
//
// Every random draw comes from one ChaCha8 source seeded from the
// configuration, so equal seeds yield identical datasets.
package generator
