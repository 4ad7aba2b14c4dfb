// Package tetris implements the simulation core of a falling-block puzzle game.
//
// An Engine owns a fixed-size Board, the falling Piece, the preview piece and
// the score, level and line counters. Every operation is synchronous and
// deterministic given a Randomizer: Move, Rotate and HardDrop mutate the game
// in response to player input, and Tick drives the automatic fall from
// caller-supplied timestamps, so the engine can be stepped by a frame loop or
// by a test with synthetic time.
//
// Invalid moves and rotations are not errors; they return false and leave the
// engine unchanged. Programming mistakes such as an out-of-range ShapeID panic.
//
// The engine is not safe for concurrent use. Collaborators running on other
// goroutines should exchange Snapshot values instead of sharing the Engine.
package tetris
