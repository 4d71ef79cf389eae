// Package factory builds pluggable components from configuration entries.
// The metrics section lists run recorder sinks as
//
//	sinks:
//	  - type: influx
//	    conf:
//	      url: http://localhost:8086
//	      bucket: evdash
//
// Each type name maps to a Factory registered at init time. Create looks up
// the factory and hands it the raw conf map, which the factory turns into a
// typed struct with Decode.
package factory
