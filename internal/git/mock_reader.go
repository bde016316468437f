package git

import "context"

// MockHistoryReader is a test double for HistoryReader.
// It allows tests to provide predefined commit data without needing a real Git repository.
// Like HistoryReader, it returns the change sets oldest first.
type MockHistoryReader struct {
	ChangeSets []CommitChangeSet
	Error      error
}

// NewMockHistoryReader creates a new MockHistoryReader with the given data.
func NewMockHistoryReader(changeSets []CommitChangeSet, err error) *MockHistoryReader {
	return &MockHistoryReader{
		ChangeSets: changeSets,
		Error:      err,
	}
}

// ReadChanges returns a chronologically sorted copy of the predefined change
// sets, or the predefined error.
func (m *MockHistoryReader) ReadChanges(ctx context.Context) ([]CommitChangeSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Error != nil {
		return nil, m.Error
	}

	out := make([]CommitChangeSet, len(m.ChangeSets))
	copy(out, m.ChangeSets)
	SortChronological(out)
	return out, nil
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*MockHistoryReader)(nil)
