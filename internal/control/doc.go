// Package control implements feedback controllers for the scalar
// process-variable loop driven by package sim.
package control
