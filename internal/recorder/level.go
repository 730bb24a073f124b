package recorder

import "time"

// Level maps the peak amplitude of samples to a 1-100 meter reading. The
// peak is amplified tenfold so normal speech reaches the top of the scale.
func Level(samples []int16) int {
	peak := 0
	for _, s := range samples {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	level := int(float64(peak) / 32768 * 100 * 10)
	switch {
	case level < 1:
		return 1
	case level > 100:
		return 100
	}
	return level
}

// RecordingName names a recording after its start minute.
func RecordingName(t time.Time) string {
	return t.Format("20060102_1504") + ".wav"
}
