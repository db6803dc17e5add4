// Command cdapdump decodes a stream of length-delimited CDAP PDUs, as
// written by a transport.Writer, and prints each message.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/andaru/cdap/codec/gpb"
	"github.com/andaru/cdap/codec/xmlcodec"
	"github.com/andaru/cdap/message"
	"github.com/andaru/cdap/transport"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	formatLog = "log"
	formatXML = "xml"
)

var dumpLog = logrus.WithField("source", "cdapdump")

func main() {
	app := cli.NewApp()
	app.Name = "cdapdump"
	app.Usage = "print the CDAP messages in a PDU stream"
	app.ArgsUsage = "[file]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "format",
			Value: formatLog,
			Usage: "output format (log or xml)",
		},
		cli.IntFlag{
			Name:  "max-pdu",
			Value: transport.DefaultMaxPDU,
			Usage: "largest PDU accepted, in bytes",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		dumpLog.WithError(err).Fatal("cdapdump failed")
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	format := c.String("format")
	if format != formatLog && format != formatXML {
		return cli.NewExitError(fmt.Sprintf("unknown format %q", format), 2)
	}

	var in io.Reader = os.Stdin
	if c.NArg() > 0 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return dump(in, os.Stdout, dumpLog, format, c.Int("max-pdu"))
}

// dump decodes every PDU read from in. Messages are written to out as
// XML, or logged to log in the log format. Undecodable PDUs are logged
// and skipped; framing errors end the dump.
func dump(in io.Reader, out io.Writer, log *logrus.Entry, format string, maxPDU int) error {
	var (
		r     = transport.NewReader(in, maxPDU)
		codec gpb.Codec
		xc    = xmlcodec.Codec{Indent: "  "}
	)
	for n := 1; ; n++ {
		pdu, err := r.ReadPDU()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		m, err := codec.Decode(pdu)
		if err != nil {
			log.WithError(err).WithField("pdu", n).Warn("cannot decode PDU")
			continue
		}
		if err := show(out, log, format, xc, n, m); err != nil {
			return err
		}
	}
}

func show(out io.Writer, log *logrus.Entry, format string, xc xmlcodec.Codec, n int, m *message.Message) error {
	if format == formatLog {
		log.WithFields(logrus.Fields{
			"pdu":       n,
			"opcode":    m.Opcode,
			"invoke-id": m.InvokeID,
		}).Info(m.String())
		return nil
	}
	if err := xc.Write(out, m); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}
