// Command rlwt builds and queries persisted run-length compressed
// wavelet tree indexes.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rlwt "github.com/AlexWan0/go-rlwt"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "rlwt",
	Short: "Build and query run-length compressed wavelet tree indexes",
}

var buildCmd = &cobra.Command{
	Use:   "build <input> <index>",
	Short: "Index a file and write the serialized index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		rl, err := rlwt.BuildFile(args[0])
		if err != nil {
			return err
		}
		out, err := rl.MarshalBinary()
		if err != nil {
			return errors.Wrap(err, "serialize index")
		}
		if err := os.WriteFile(args[1], out, 0644); err != nil {
			return errors.Wrapf(err, "write %s", args[1])
		}
		log.Infof("indexed %s bytes in %s, index is %s on disk",
			humanize.Comma(int64(rl.Num())), time.Since(start).Round(time.Millisecond),
			humanize.Bytes(uint64(len(out))))
		return nil
	},
}

var accessCmd = &cobra.Command{
	Use:   "access <index> <pos>",
	Short: "Print the byte at a position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rl, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		pos, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse position %q", args[1])
		}
		if pos >= rl.Num() {
			return errors.Errorf("position %d out of range [0, %d)", pos, rl.Num())
		}
		fmt.Printf("%#x (%q)\n", rl.Access(pos), rl.Access(pos))
		return nil
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank <index> <pos> <symbol>",
	Short: "Count occurrences of a symbol before a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rl, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		pos, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse position %q", args[1])
		}
		c, err := parseSymbol(args[2])
		if err != nil {
			return err
		}
		if pos > rl.Num() {
			return errors.Errorf("position %d out of range [0, %d]", pos, rl.Num())
		}
		fmt.Println(rl.Rank(pos, c))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <index> <k> <symbol>",
	Short: "Find the position of the k-th occurrence of a symbol",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rl, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		k, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse occurrence index %q", args[1])
		}
		c, err := parseSymbol(args[2])
		if err != nil {
			return err
		}
		if count := rl.Rank(rl.Num(), c); k == 0 || k > count {
			return errors.Errorf("occurrence %d of %#x out of range [1, %d]", k, c, count)
		}
		fmt.Println(rl.Select(k, c))
		return nil
	},
}

var statCmd = &cobra.Command{
	Use:   "stat <index>",
	Short: "Print index statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fi, err := os.Stat(args[0])
		if err != nil {
			return errors.Wrapf(err, "stat %s", args[0])
		}
		rl, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("sequence length: %s\n", humanize.Comma(int64(rl.Num())))
		fmt.Printf("index on disk:   %s\n", humanize.Bytes(uint64(fi.Size())))
		fmt.Printf("index in memory: %s\n", humanize.Bytes(uint64(rl.AllocSize())))
		return nil
	},
}

func loadIndex(path string) (*rlwt.RLWT, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read index %s", path)
	}
	rl := new(rlwt.RLWT)
	if err := rl.UnmarshalBinary(in); err != nil {
		return nil, errors.Wrapf(err, "decode index %s", path)
	}
	return rl, nil
}

// parseSymbol accepts a single literal character or a numeric byte
// value such as 65 or 0x41.
func parseSymbol(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "parse symbol %q", s)
	}
	return byte(v), nil
}

func main() {
	rootCmd.AddCommand(buildCmd, accessCmd, rankCmd, selectCmd, statCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
