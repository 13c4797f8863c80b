// Package parallel runs independent jobs with bounded concurrency.
//
// WorkerPool is used to convert several reports at once; every job reports
// its own result and failures do not stop the others unless fail-fast is set.
package parallel
