/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"strings"
)

// MaxConsoleLines is how much history the message console keeps.
const MaxConsoleLines = 200

// Console holds the on-screen messages shown below the disassembly.
var Console = NewConsole(MaxConsoleLines)

// MessageConsole is a scrollable, bounded history of short messages.
type MessageConsole struct {
	// lines of text, oldest first
	lines []string

	// limit is the most lines kept before the oldest are dropped
	limit int

	// pos is one past the last line visible; following means it tracks
	// the newest line
	pos       int
	following bool
}

// NewConsole creates an empty console keeping at most limit lines.
func NewConsole(limit int) *MessageConsole {
	return &MessageConsole{
		lines:     make([]string, 0, limit),
		limit:     limit,
		following: true,
	}
}

// Log adds a line of words to the console.
func (c *MessageConsole) Log(s ...string) {
	c.append(strings.Join(s, " "))
}

// Logln adds a blank separator line, then a line of words.
func (c *MessageConsole) Logln(s ...string) {
	c.append("")
	c.append(strings.Join(s, " "))
}

func (c *MessageConsole) append(line string) {
	c.lines = append(c.lines, line)

	// drop the oldest lines once over the limit
	if over := len(c.lines) - c.limit; over > 0 {
		c.lines = append(c.lines[:0], c.lines[over:]...)

		if c.pos -= over; c.pos < 0 {
			c.pos = 0
		}
	}

	if c.following {
		c.pos = len(c.lines)
	}
}

// Len is the number of lines held.
func (c *MessageConsole) Len() int {
	return len(c.lines)
}

// Window returns up to n lines ending at the scroll position.
func (c *MessageConsole) Window(n int) []string {
	start := c.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	end := start + n
	if end > len(c.lines) {
		end = len(c.lines)
	}

	return c.lines[start:end]
}

// Home scrolls so the oldest lines are visible.
func (c *MessageConsole) Home(n int) {
	c.pos = n
	c.following = c.pos >= len(c.lines)
}

// End scrolls to the newest line and follows new lines again.
func (c *MessageConsole) End() {
	c.pos = len(c.lines)
	c.following = true
}

// Scroll moves the window by d lines, keeping a full window of n lines
// visible when there are enough.
func (c *MessageConsole) Scroll(d, n int) {
	c.pos += d

	if c.pos < n {
		c.pos = n
	}

	// clamp to the end
	if c.pos >= len(c.lines) {
		c.End()
	} else {
		c.following = false
	}
}
