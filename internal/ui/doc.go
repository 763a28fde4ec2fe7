// Package ui hosts the kernel inside a Bubble Tea program.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Update routes
//     each one through a typed handler registry so every tea.Msg is handled
//     by a focused function.
//   - Key and mouse messages are normalized by the kernel's input manager,
//     which publishes keyDown, navigate, action and pointer events on the
//     bus. Scenes react to those events; the model never inspects them.
//   - Timers are tea.Tick commands. The scheduler queues one per delay and
//     the model drains the queue after every update; the resulting
//     timer.FiredMsg comes back through Update and runs the callback on the
//     program goroutine.
//   - Window size messages resize the shared canvas and publish resize.
//   - systemShutdown ends the program with tea.Quit.
//
// Rendering:
//   - View clears the canvas, lets the current scene draw into it and
//     appends the footer: key help from bubbles/help plus the hints the
//     scene offers.
//
// Tests drive the model through Harness with a manual scheduler, which
// keeps scene flows deterministic.
package ui
