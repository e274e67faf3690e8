// Package task defines the Task value type tracked by task-cli.
//
// A Task is an immutable value. Every change (id assignment, new description,
// new status) is expressed as a method returning a fresh copy with UpdatedAt
// stamped from the supplied time, so a Task handed out by the store can never
// be used to modify the store's own state.
//
// Operations take the current time as an argument instead of reading the
// wall clock. Callers obtain it from a Clock, which lets tests supply a
// deterministic one.
package task
