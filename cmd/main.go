/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/dc-tec/pulsar-operator/cmd/controller"
)

var (
	setupLog = ctrl.Log.WithName("setup")
)

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("missing command (valid commands: controller)")
	}

	// Shift args so flag parsing works inside sub-functions (e.g., --leader-elect)
	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "controller":
		return controller.Run(args)
	default:
		return fmt.Errorf("unknown command %q (valid commands: controller)", command)
	}
}

func main() {
	if err := run(); err != nil {
		setupLog.Error(err, "command failed")
		os.Exit(1)
	}
}
