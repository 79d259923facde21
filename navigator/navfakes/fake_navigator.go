package navfakes

import (
	"sync"

	"github.com/harvestly/go-session-gate/navigator"
)

var _ navigator.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records navigation effects for assertions.
type FakeNavigator struct {
	mu       sync.Mutex
	pushes   []string
	replaces []string
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{}
}

func (n *FakeNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, path)
}

func (n *FakeNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaces = append(n.replaces, path)
}

// Pushes returns the paths navigated to with history pushes.
func (n *FakeNavigator) Pushes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.pushes...)
}

// Replaces returns the paths navigated to with history replacement.
func (n *FakeNavigator) Replaces() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.replaces...)
}

var _ navigator.Notifier = (*FakeNotifier)(nil)

// FakeNotifier records shown notifications.
type FakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// Messages returns every notification shown so far.
func (n *FakeNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
