// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentTaskManager: Starts backend operations and returns task handles
//   - ConfigStore: Application configuration
//
// # Adapter Interfaces
//
// These are consumed by adapters rather than by core services:
//
//   - APICommunicator: Raw JSON access to the backend, used by the task manager
//   - RecordStore: Record persistence, used by the sandbox backend
//
// # Import Rules
//
//   - Can Import: domain and task packages only
//   - Cannot Import: Any adapter package
package driven
