//go:build cgo && !nosdl

package main

import _ "github.com/kjkrol/gorast/pkg/gfx/sdl"
