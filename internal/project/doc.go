// Package project knows the layout of an Automation Studio project:
// the .apj descriptor at the top, source code under Logical/ and hardware
// configurations under Physical/<Configuration>/.
package project
