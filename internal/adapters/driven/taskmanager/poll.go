package taskmanager

import (
	"context"
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/task"
	"github.com/custodia-labs/docpay-cli/internal/logger"
)

// PollDocument re-fetches the document every poll interval until it leaves
// the PENDING state. A document that is not PENDING resolves immediately
// without contacting the backend.
func (m *Manager) PollDocument(doc *domain.Document) *task.Task[*domain.Document] {
	if doc.State.IsTerminal() {
		return task.FromResult(doc)
	}

	ctx, cancel := context.WithCancel(m.ctx)
	handle := m.registerPoll(doc.ID, cancel)

	return task.Run(ctx, func(ctx context.Context) (*domain.Document, error) {
		defer m.unregisterPoll(doc.ID, handle)
		return m.poll(ctx, doc.ID)
	})
}

// CancelDocumentPolling cancels every in-flight poll of doc.
// Polls of other documents keep running.
func (m *Manager) CancelDocumentPolling(doc *domain.Document) {
	m.mu.Lock()
	cancels := m.polls[doc.ID]
	delete(m.polls, doc.ID)
	m.mu.Unlock()

	if len(cancels) > 0 {
		logger.Debug("cancelling %d poll(s) of document %s", len(cancels), doc.ID)
	}
	for _, cancel := range cancels {
		cancel()
	}
}

// ActivePolls returns the number of polls currently running.
func (m *Manager) ActivePolls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, byHandle := range m.polls {
		n += len(byHandle)
	}
	return n
}

func (m *Manager) poll(ctx context.Context, documentID string) (*domain.Document, error) {
	for round := 1; ; round++ {
		doc, err := m.fetchDocument(ctx, documentID)
		if err != nil {
			return nil, err
		}
		if doc.State.IsTerminal() {
			logger.Debug("document %s reached %s after %d poll(s)", documentID, doc.State, round)
			return doc, nil
		}

		timer := time.NewTimer(m.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (m *Manager) registerPoll(documentID string, cancel context.CancelFunc) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	if m.polls[documentID] == nil {
		m.polls[documentID] = make(map[uint64]context.CancelFunc)
	}
	m.polls[documentID][m.nextID] = cancel
	return m.nextID
}

func (m *Manager) unregisterPoll(documentID string, handle uint64) {
	m.mu.Lock()
	cancel, ok := m.polls[documentID][handle]
	if ok {
		delete(m.polls[documentID], handle)
		if len(m.polls[documentID]) == 0 {
			delete(m.polls, documentID)
		}
	}
	m.mu.Unlock()

	if ok {
		cancel()
	}
}
