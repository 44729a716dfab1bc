// Copyright 2010-2025 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The milpsolve command builds one of the formulations from a configuration file, solves
// it with the branch-and-bound solver and prints the decoded facts.
package main

import (
	log "github.com/golang/glog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Exitf("milpsolve returned with error: %v", err)
	}
}
