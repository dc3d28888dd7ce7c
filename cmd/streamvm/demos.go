package main

// The four demo programs from the original StreamVM prototype, kept
// verbatim in meaning: a straight-line playback script, a conditional
// loop driven by the position sensor, a memory/arithmetic walkthrough,
// and a DECJZ countdown demonstrating the instruction set is Turing
// complete.

const demoSimple = `
OPEN "Trailer 1"
PLAY 1
WAIT 5
PAUSE
HALT
`

const demoConditional = `
OPEN "Demo Video"
PLAY 1

loop:
    WAIT 1
    GET_POS
    PUSH 30
    LT
    JUMPI loop

PAUSE
PRINTS "Reached 30 seconds!"
HALT
`

const demoArithmetic = `
OPEN "Tutorial"
PLAY 1
WAIT 10

GET_POS
STORE 0

LOAD 0
PUSH 20
ADD
POP R0

PUSH R0
POP R0
SEEK 30

HALT
`

const demoDecjz = `
PUSH 5
POP R0

countdown:
    PUSH R0
    PRINT
    DECJZ R0, done
    GOTO countdown

done:
    PRINTS "Countdown finished!"
    HALT
`

var demos = map[string]string{
	"simple":      demoSimple,
	"conditional": demoConditional,
	"arithmetic":  demoArithmetic,
	"decjz":       demoDecjz,
}
