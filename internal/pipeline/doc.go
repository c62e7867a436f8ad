// Package pipeline runs pixr commands against image files: input validation,
// the per-command processing (target-size, rescale, convert, anonymize),
// atomic output writes, per-file reports and batch summaries.
//
// Every runner is synchronous and owns its image buffers exclusively. Runners
// log progress through the logger and return a Report; reporting the final
// outcome to the user is the caller's job (see LogReport).
//
// Files:
//   - execute.go: Execute, dispatch over config.Command.
//   - input.go: input validation and format gating.
//   - targetsize.go, rescale.go, convert.go, anonymize.go: the runners.
//   - report.go: Report, Outcome, LogReport.
//   - write.go: atomic temp-file + rename writes.
//   - stats.go, discover.go: batch counters and directory listing for watch mode.
package pipeline
