/*

Package csdem decodes Counter-Strike: Global Offensive demo (DEM)
files into a structured, queryable event stream.

A demo is a binary recording of every server-to-client packet exchanged
during a match: entity state deltas, game events, user identities,
string tables, and control commands. csdem reconstructs the server's
replicated state frame by frame and reports every interesting state
transition to an observer.

This root package provides the mechanics every higher-level package
builds on: a little-endian, LSB-first bit decoder (BitDecoder), a
byte-oriented coded-stream reader for the net-message framing
(CodedStream), a small runtime type system used to materialize
entity layouts that are only known once a demo's schema has been
read (Type/ObjectType/ArrayType), and the fixed demo Header.

Package csdem/demo ties everything together: it owns the frame
dispatch loop and is the type most callers should start from.

Information sources

The wire format implemented here is undocumented by Valve; this
package is grounded in the publicly available csgopp reimplementation
and in the author's own reverse engineering notes.

*/
package csdem
