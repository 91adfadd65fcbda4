package animator

// Event names a lifecycle notification.
type Event string

const (
	EventPreupdate  Event = "preupdate"
	EventUpdate     Event = "update"
	EventApply      Event = "apply"
	EventFinished   Event = "finished"
	EventDeactivate Event = "deactivate"

	EventStarting Event = "starting"
	EventBegin    Event = "begin"
	EventEnd      Event = "end"
)

type listener[S any] struct {
	id   int
	fn   func(S)
	once bool
}

// listeners calls back in registration order.
type listeners[S any] struct {
	next  int
	byEvt map[Event][]listener[S]
}

func newListeners[S any]() *listeners[S] {
	return &listeners[S]{byEvt: make(map[Event][]listener[S])}
}

func (ls *listeners[S]) add(e Event, fn func(S), once bool) func() {
	ls.next++
	id := ls.next
	ls.byEvt[e] = append(ls.byEvt[e], listener[S]{id: id, fn: fn, once: once})
	return func() { ls.remove(e, id) }
}

func (ls *listeners[S]) remove(e Event, id int) {
	list := ls.byEvt[e]
	for i, x := range list {
		if x.id == id {
			ls.byEvt[e] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (ls *listeners[S]) trigger(e Event, subject S) {
	list := ls.byEvt[e]
	if len(list) == 0 {
		return
	}
	snapshot := append([]listener[S](nil), list...)
	for _, x := range snapshot {
		if x.once {
			ls.remove(e, x.id)
		}
		x.fn(subject)
	}
}
