// Command sweepcli plays a game on the terminal. Each input line is one
// command: "o x y" opens a cell, "f x y" toggles a flag, "n" starts over,
// "q" gives up and "g" just prints the board.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/command"
	"github.com/vancomm/sweeper/internal/mines"
)

var (
	width   = flag.Int("width", 9, "board width")
	height  = flag.Int("height", 9, "board height")
	mineCnt = flag.Int("mines", 10, "number of mines")
	seed    = flag.Uint64("seed", 0, "mine placement seed, 0 picks one at random")
	verbose = flag.Bool("v", false, "log engine events")
)

func play(b *mines.Board, in io.Reader, out io.Writer, log logrus.FieldLogger) error {
	fmt.Fprint(out, b)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := command.ExecuteAll(b, scanner.Text()); err != nil {
			log.WithError(err).Warn("bad command")
			continue
		}
		fmt.Fprint(out, b)
		switch b.Stage() {
		case mines.Won:
			fmt.Fprintln(out, "you win! n to play again")
		case mines.Lost:
			fmt.Fprintln(out, "boom. n to play again")
		}
	}
	return scanner.Err()
}

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	mines.Log = log

	rnd := mines.NewRand()
	if *seed != 0 {
		rnd = rand.New(rand.NewPCG(*seed, *seed))
	}

	params := mines.GameParams{Width: *width, Height: *height, MineCount: *mineCnt}
	b, err := mines.NewBoard(params, rnd)
	if err != nil {
		log.WithError(err).Fatal("unable to create board")
	}

	if err := play(b, os.Stdin, os.Stdout, log); err != nil {
		log.WithError(err).Fatal("unable to read input")
	}
}
