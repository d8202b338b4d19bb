// Package clockface implements the animation core for analog clock widgets:
// a shared frame scheduler that fans out to any number of clock instances,
// each computing its hand angles from wall-clock time through a configurable
// motion model.
//
// # Core Components
//
// The engine consists of a few cooperating pieces:
//
//   - [Scheduler]: owns the instance registry and the shared frame driver.
//     The driver starts lazily on the first [Scheduler.Start] and shuts
//     itself down once no instance remains running.
//
//   - Motion models: four styles ([MotionNone], [MotionSmooth],
//     [MotionJumping], [MotionImpulse]) mapping a wall-clock sample to
//     hour/minute/second hand angles in degrees. Only the impulse model
//     carries state between frames.
//
//   - Frame-rate gate: a per-instance throttle that limits updates to the
//     instance's configured FPS, independent of the shared driver rate.
//
//   - [Sink]: the rendering boundary. The scheduler hands computed angles
//     to the sink and nothing else; how they reach the screen is the host's
//     concern.
//
// # Basic Usage
//
// Create a scheduler, register instances, and start them:
//
//	sched := clockface.NewScheduler(clockface.SchedulerOptions{Sink: sink})
//	id := sched.CreateInstance()
//	sched.SetMotionStyle(id, clockface.MotionImpulse)
//	sched.SetFPS(id, 60)
//	sched.Start(id)
//
// Stopping an instance keeps its registry entry and retained state; a later
// Start resumes where it left off. [Scheduler.Tick] runs a single driver
// iteration against an explicit timestamp, which is how the engine is
// exercised deterministically in tests.
//
// # Time
//
// All pacing decisions use the monotonic timestamps of a [TimeSource];
// hand positions derive from its wall-clock reading. Tests inject a fake
// source (see package clocktest) to control both independently.
package clockface
