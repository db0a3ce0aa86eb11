// Package commands implements the beamlink CLI: a peer-to-peer,
// end-to-end encrypted single-file transfer over an MTU-limited link.
// One peer listens, the other connects; the session key is ephemeral and
// the printed fingerprints should be compared out of band.
package commands
