// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build gdbind_full

package main

import (
	"github.com/albertocavalcante/gdbind/generator"
	"github.com/albertocavalcante/gdbind/generators/csharp"
	"github.com/albertocavalcante/gdbind/generators/jsonmodel"
)

func init() {
	// Full build: all generators embedded
	generator.Register(csharp.NewGenerator())
	generator.Register(jsonmodel.NewGenerator())
}
