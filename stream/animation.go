package stream

// A Playlist cycles through animation names in order.
type Playlist struct {
	names   []string
	current int
}

// NewPlaylist creates an instance of a Playlist.
func NewPlaylist(names []string) *Playlist {
	p := new(Playlist)
	p.names = append([]string(nil), names...)
	p.current = -1
	return p
}

func (p *Playlist) Names() []string { return p.names }

// Current is the name last returned by Next or Jump, if any.
func (p *Playlist) Current() (string, bool) {
	if p.current < 0 || p.current >= len(p.names) {
		return "", false
	}
	return p.names[p.current], true
}

// Next moves to the following name, wrapping at the end.
func (p *Playlist) Next() (string, bool) {
	if len(p.names) == 0 {
		return "", false
	}
	p.current = (p.current + 1) % len(p.names)
	return p.names[p.current], true
}

// Jump moves to name, returning false when it is not in the playlist.
func (p *Playlist) Jump(name string) bool {
	for i, n := range p.names {
		if n == name {
			p.current = i
			return true
		}
	}
	return false
}
