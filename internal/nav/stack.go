package nav

// Stack is a navigation-stack container: an ordered list of hosts where only
// the top is visible. The root host is never popped.
type Stack struct {
	hosts              []*ScreenHost
	prefersLargeTitles bool
}

// NewStack returns a Stack with root as its only host.
func NewStack(root *ScreenHost) *Stack {
	s := &Stack{}
	root.parent = s
	s.hosts = []*ScreenHost{root}
	return s
}

// TopHost implements Screen.
func (s *Stack) TopHost() *ScreenHost {
	return s.hosts[len(s.hosts)-1]
}

// Root returns the bottom host.
func (s *Stack) Root() *ScreenHost { return s.hosts[0] }

// Len returns the number of hosts.
func (s *Stack) Len() int { return len(s.hosts) }

// Hosts returns the hosts bottom to top.
func (s *Stack) Hosts() []*ScreenHost {
	return append([]*ScreenHost(nil), s.hosts...)
}

// PrefersLargeTitles reports whether large titles are shown in this stack.
func (s *Stack) PrefersLargeTitles() bool { return s.prefersLargeTitles }

// SetPrefersLargeTitles toggles large title display.
func (s *Stack) SetPrefersLargeTitles(v bool) { s.prefersLargeTitles = v }

// Push puts h on top. The previous top stops being visible; h appears at
// the next layout pass.
func (s *Stack) Push(h *ScreenHost) {
	s.TopHost().disappear()
	h.parent = s
	s.hosts = append(s.hosts, h)
}

// Pop removes the top host as a backward navigation. It reports false when
// only the root is left.
func (s *Stack) Pop() (*ScreenHost, bool) {
	if len(s.hosts) <= 1 {
		return nil, false
	}
	top := s.hosts[len(s.hosts)-1]
	s.hosts = s.hosts[:len(s.hosts)-1]
	top.detach(true)
	return top, true
}

func (s *Stack) release() {
	for _, h := range s.hosts {
		h.detach(false)
	}
}
