// Package domain contains the core business entities, value objects, and
// lifecycle rules of the application. It is the heart of the system and has
// no dependency on any transport or storage technology.
package domain
