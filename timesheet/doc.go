// Package timesheet holds the rules for logged hours: how a calendar day is
// classified, which day batches may be saved, and how entries and planned
// allocations roll up into totals, allocation percentages and variance.
//
// Every function is pure. Callers fetch records from the store, pass them in
// and get plain values or typed errors back; nothing here performs I/O, logs or
// keeps state, so the functions are safe to call from concurrent requests.
//
// Hours are decimal values. Summing many half-hour increments must not drift,
// which rules out float64.
package timesheet
