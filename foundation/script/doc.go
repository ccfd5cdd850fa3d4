// Package script is the entry point to the command script language.
//
// Package: script
// Title: Command Script Engine
// Description: Ties lexer, parser and interpreter together. An Engine parses
//              source text, runs it against a repository and reports one
//              interp.Event per expression. It also exposes token streams
//              and the service and form references of a program.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Usage:
//
//	reg := repository.NewRegistry(repository.Options{})
//	reg.RegisterService("customer:show", factory)
//
//	engine := script.NewEngine(script.Options{Repository: reg})
//	summary, err := engine.Execute(ctx, "x = 7; with customer(x) do show;", nil, nil)
//	if err != nil {
//	    // syntax error or cancelled run
//	}
//	for _, event := range summary.Events {
//	    fmt.Println(event.Index, event.Code, event.Message)
//	}
//
// Language summary:
//
//	x = 10;                                  assignment
//	create service 'customer:show';          service object
//	create connected form customer;          form object
//	display form customer ('customer:show'); open a form
//	execute service foo (x) { a: 'b' };      run a service
//	with customer (7) do show { full: true };  run service customer:show
//	execute service show <- execute service list;  pipe
package script
