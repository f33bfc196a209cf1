package random

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHelpers(t *testing.T) {
	Convey("Given a scripted source", t, func() {
		src := NewScripted(0, 0.5, 0.999, 0.25)

		Convey("Intn floors the scaled draw", func() {
			So(Intn(src, 4), ShouldEqual, 0)
			So(Intn(src, 4), ShouldEqual, 2)
			So(Intn(src, 4), ShouldEqual, 3)
			So(Intn(src, 4), ShouldEqual, 1)
			So(src.Drawn(), ShouldEqual, 4)
		})

		Convey("Intn of a non-positive bound does not draw", func() {
			So(Intn(src, 0), ShouldEqual, 0)
			So(src.Drawn(), ShouldEqual, 0)
		})

		Convey("Between is inclusive", func() {
			So(Between(src, 1, 3), ShouldEqual, 1)
			So(Between(src, 1, 3), ShouldEqual, 2)
			So(Between(src, 1, 3), ShouldEqual, 3)
		})

		Convey("Chance compares strictly", func() {
			So(Chance(src, 0), ShouldBeFalse)
			So(Chance(src, 0.6), ShouldBeTrue)
		})

		Convey("Pick selects by index", func() {
			So(Pick(src, []string{"a", "b"}), ShouldEqual, "a")
			So(Pick(src, []string{"a", "b"}), ShouldEqual, "b")
			So(Pick(src, []string{}), ShouldEqual, "")
		})

		Convey("The script wraps around", func() {
			for i := 0; i < 4; i++ {
				src.Float64()
			}
			So(src.Float64(), ShouldEqual, 0)
		})
	})
}

func TestSeeded(t *testing.T) {
	Convey("Given two sources with the same seed", t, func() {
		a, b := NewSeeded(7), NewSeeded(7)

		Convey("They replay the same sequence", func() {
			for i := 0; i < 20; i++ {
				v := a.Float64()
				So(v, ShouldEqual, b.Float64())
				So(v, ShouldBeGreaterThanOrEqualTo, 0)
				So(v, ShouldBeLessThan, 1)
			}
		})
	})

	Convey("Given a crypto seed", t, func() {
		seed, err := NewSeed()
		So(err, ShouldBeNil)
		So(NewSeeded(seed), ShouldNotBeNil)
	})
}
