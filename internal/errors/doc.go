// Package errors provides coded, structured errors for the observable module.
//
// Every error the module surfaces carries a short code that maps to a
// registered template:
//   - A short message describing the error
//   - A detailed explanation
//   - An optional hint on how to fix it
//
// # Error Categories
//
//   - usage: the caller misused a cell (writing a computed cell, wrong type)
//   - computation: a computed cell's computation failed
//   - config: the bench configuration file is invalid
//   - cli: the command line driver was invoked incorrectly
//
// # Usage
//
//	err := errors.New("O003").
//	    WithDetail("func(int, int) int takes 2 arguments").
//	    WithSuggestion("Pass a func() T or bind a receiver with WithReceiver")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR O003: Invalid computation
//	//
//	//   func(int, int) int takes 2 arguments
//	//
//	//   Hint: Pass a func() T or bind a receiver with WithReceiver
//
// Two errors with the same code match under errors.Is, so registered codes can
// be used as sentinels.
package errors
