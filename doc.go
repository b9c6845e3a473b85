// Copyright 2016 - 2024 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.
//
// Package formula implements the value model, error algebra, coercion
// rules, reference parser, and function library that a spreadsheet
// formula evaluator needs to turn a function call and a set of
// arguments into a typed result compatible with Excel's observed
// behavior.
//
// The tokenizer that turns formula text into an AST, the expression
// compiler that binds names to cell reads, the recalculation engine
// (dependency graph, dirty tracking), and the on-disk workbook reader
// are external collaborators; this package only implements the part of
// the system that decides what a function call evaluates to.
package formula
