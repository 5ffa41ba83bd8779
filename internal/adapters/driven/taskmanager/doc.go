// Package taskmanager implements driven.DocumentTaskManager on top of a
// driven.APICommunicator.
//
// Every operation runs on its own goroutine bound to the manager's lifetime
// and is handed back as a task.Task. Document polls can be cancelled
// individually with CancelDocumentPolling, or all at once with Close.
package taskmanager
