package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Drawing buffer resized.
	/* Context usage:
	 * width  = data.U32[0]
	 * height = data.U32[1]
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// An asset file was created or rewritten.
	/* Context usage:
	 * name = data.Name
	 */
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x10

	// The audio collaborator has media ready for analysis.
	EVENT_CODE_MEDIA_READY SystemEventCode = 0x11

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Code SystemEventCode
	Data struct {
		U32  [4]uint32
		F32  [4]float32
		Name string
	}
}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type postedEvent struct {
	sender  interface{}
	context EventContext
}

// EventBus dispatches events on the frame thread. Fire runs listeners
// immediately; Post queues from any goroutine and Drain delivers the queue.
type EventBus struct {
	registered map[SystemEventCode][]*registeredEvent

	mu      sync.Mutex
	pending []postedEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (b *EventBus) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	for _, e := range b.registered[code] {
		if e.listener == listener {
			LogWarn("event code %d already has this listener registered", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the listener for code. Returns false if it was not registered.
func (b *EventBus) Unregister(code SystemEventCode, listener interface{}) bool {
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (b *EventBus) Fire(code SystemEventCode, sender interface{}, context EventContext) bool {
	context.Code = code
	for _, e := range b.registered[code] {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Post queues an event for the next Drain. Safe for concurrent use.
func (b *EventBus) Post(code SystemEventCode, sender interface{}, context EventContext) {
	context.Code = code
	b.mu.Lock()
	b.pending = append(b.pending, postedEvent{sender: sender, context: context})
	b.mu.Unlock()
}

// Drain fires every posted event in order and returns how many were delivered.
func (b *EventBus) Drain() int {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, p := range pending {
		b.Fire(p.context.Code, p.sender, p.context)
	}
	return len(pending)
}
