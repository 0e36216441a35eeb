// Package broadcast provides a type-safe, generic in-memory pub/sub
// primitive for fanning a value out to every active subscriber.
//
// # Core Components
//
// Broadcaster: sends a Message[T] to every current Subscriber
// Message: generic container wrapping a payload of type T
// Subscriber: a single subscription's receive channel
//
// # Basic Usage
//
//	b := broadcast.NewMemoryBroadcaster[string](100)
//	defer b.Close()
//
//	ctx := context.Background()
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	go func() {
//	    for msg := range sub.Receive(ctx) {
//	        fmt.Println("received:", msg.Data)
//	    }
//	}()
//
//	b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
// # Slow consumers
//
// Broadcast never blocks on a subscriber. A subscriber whose buffer is full
// has the message dropped and is unsubscribed asynchronously.
//
// # Thread Safety
//
// Broadcaster implementations are safe for concurrent use. A Subscriber's
// Receive channel should only be drained by a single goroutine.
package broadcast
