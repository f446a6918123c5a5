package chat

import "sync"

// Exchange is one user/assistant pair kept in a thread's transcript.
type Exchange struct {
	Input  string
	Result string
}

// Thread is the client-held state of one agent flavor's conversation.
type Thread struct {
	ResponseID string
	Transcript []Exchange
}

// Memory holds one conversation thread per agent flavor. The server is
// stateless; a client keeps a Memory for its session and replays the stored
// response id on each turn. Switching flavor neither shares nor resets the
// other flavor's thread — only Reset clears one.
type Memory struct {
	mu      sync.Mutex
	threads map[string]*Thread
}

func NewMemory() *Memory {
	return &Memory{threads: make(map[string]*Thread)}
}

// ResponseID returns the stored handle for the flavor, empty on a fresh
// thread.
func (m *Memory) ResponseID(flavor string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.threads[flavor]; ok {
		return t.ResponseID
	}
	return ""
}

// Advance records a completed turn: the exchange is appended to the flavor's
// transcript and the response id becomes the thread's new handle.
func (m *Memory) Advance(flavor, input, result, responseID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[flavor]
	if !ok {
		t = &Thread{}
		m.threads[flavor] = t
	}
	t.Transcript = append(t.Transcript, Exchange{Input: input, Result: result})
	t.ResponseID = responseID
}

// Transcript returns a copy of the flavor's exchanges in order.
func (m *Memory) Transcript(flavor string) []Exchange {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[flavor]
	if !ok {
		return nil
	}
	out := make([]Exchange, len(t.Transcript))
	copy(out, t.Transcript)
	return out
}

// Reset discards one flavor's thread. Other flavors are untouched.
func (m *Memory) Reset(flavor string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.threads, flavor)
}
