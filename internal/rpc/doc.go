// Package rpc is the wire contract of the account service.
//
// Messages are plain Go structs carried over gRPC with a JSON codec, so
// both sides only need this package. Clients must select the codec with
// grpc.CallContentSubtype(CodecName); NewClient does that for every call.
//
// Responses mirror the service's {success, error} envelope: a refused
// operation is a successful RPC with Success=false and a human readable
// Error. gRPC status errors are reserved for transport and internal
// failures.
package rpc
