package cmd

import (
	"fmt"
	"os"
	"time"

	"netmapper/scan"

	"github.com/gookit/color"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// reportFileName Scan_2006.01.02.15.04.05.txt
func reportFileName(t time.Time) string {
	return "Scan_" + t.Format("2006.01.02.15.04.05") + ".txt"
}

// renderReport 在报告前加上时间抬头,时间格式化是输出端的职责
func renderReport(report *scan.ScanReport, t time.Time) string {
	return fmt.Sprintf("\nNetwork Scan - %s\n%s\n", t.Format("Mon, 2 Jan 2006 @ 15:04:05"), report.String())
}

// writeReport 打印到终端,除非output为-,否则同时写入文件
func writeReport(report *scan.ScanReport, t time.Time, output string, details bool) error {
	text := renderReport(report, t)
	fmt.Println(text)

	if details {
		for _, host := range report.Hosts {
			fmt.Println(host.String())
		}
	}

	summary := fmt.Sprintf("%d active hosts in %s", report.ActiveHosts(), report.Elapsed.Round(time.Millisecond))
	if report.Interrupted {
		color.Yellow.Println("扫描被中断: " + summary)
	} else {
		color.Green.Println("扫描完毕: " + summary)
	}

	if output == "-" {
		return nil
	}
	if output == "" {
		output = reportFileName(t)
	}
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return errors.Wrap(err, "写入报告失败")
	}
	log.Infof("Results have been written to %s", output)
	return nil
}
