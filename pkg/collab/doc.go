// Package collab defines the capability-set interfaces the commerce core
// depends on but never implements: payment processing, media transcoding,
// object storage, and audit logging. Each is one small vtable, not a
// generic plugin surface — callers reach for the concrete interface a
// saga or job actually needs rather than a do-everything provider.
package collab
