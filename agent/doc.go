// Package agent contains the building blocks for composing agents into
// deterministic pipelines over a shared core.MemoryStore. The package focuses
// on three concerns:
//
//  1. Identity plumbing shared by concrete agents (BaseAgent)
//  2. Adapting plain functions into agents (Func)
//  3. Ordered, fail-fast composition (Pipeline)
//
// Execution model:
//   - A pipeline runs its agents strictly one after another on one store
//   - The first failing agent halts the run; facts written before it remain
//   - Narration goes to an injected core.EventLog, diagnostics to an
//     injected logging.Logger
//   - A Pipeline is itself a core.Agent, so pipelines nest
package agent
