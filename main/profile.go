package main

import (
	"log"
	"time"
)

func profileTick(dt float32) func() {
	start := time.Now()
	return func() {
		log.Printf("PROFILE: %v - tick", time.Since(start))
	}
}
