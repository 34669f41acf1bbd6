// Package engine is the offset engine: it owns the anchors for the current
// trial and produces the virtual hand and elbow positions every tick.
//
// The host loop drives it explicitly:
//
//	eng, _ := engine.New(cfg, layout.Default(), engine.WithLogger(log.L()))
//	_ = eng.SelectTrial(sel, tr, pose) // once per trial
//	frame := eng.Tick(dt, inputs)     // once per simulation tick
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. SelectTrial and Tick are expected
// on the same simulation thread.
package engine
