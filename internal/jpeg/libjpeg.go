package jpeg

/*
#cgo pkg-config: libjpeg
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <jpeglib.h>
#include <setjmp.h>

// Largest decoded RGB buffer accepted, in bytes.
#define LSB_MAX_PIXEL_BYTES ((size_t)0x7fffffff)

typedef struct {
    struct jpeg_error_mgr pub;
    jmp_buf               jmpbuf;
    char                  msg[JMSG_LENGTH_MAX];
} lsb_err_mgr;

static void lsb_error_exit(j_common_ptr cinfo) {
    lsb_err_mgr *e = (lsb_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

// lsb_jpeg is filled by lsb_read_jpeg and released with lsb_jpeg_free,
// whether or not the read failed.
typedef struct {
    int            width;
    int            height;
    int            components;
    int            color_space;  // J_COLOR_SPACE of the stored data
    unsigned char *pixels;       // interleaved RGB, NULL unless requested
    unsigned char *app2;         // APP2 payloads back to back
    unsigned int  *app2_lens;
    int            app2_count;
    int            failed;
    char           msg[JMSG_LENGTH_MAX];
} lsb_jpeg;

static void lsb_copy_app2(j_decompress_ptr cinfo, lsb_jpeg *out) {
    unsigned long total = 0;
    int count = 0;
    jpeg_saved_marker_ptr m;
    for (m = cinfo->marker_list; m != NULL; m = m->next) {
        if (m->marker == JPEG_APP0+2 && m->data_length > 0) {
            total += m->data_length;
            count++;
        }
    }
    if (count == 0) {
        return;
    }
    out->app2 = (unsigned char *)malloc(total);
    out->app2_lens = (unsigned int *)malloc(count * sizeof(unsigned int));
    if (out->app2 == NULL || out->app2_lens == NULL) {
        return;
    }
    unsigned long off = 0;
    for (m = cinfo->marker_list; m != NULL; m = m->next) {
        if (m->marker == JPEG_APP0+2 && m->data_length > 0) {
            memcpy(out->app2 + off, m->data, m->data_length);
            out->app2_lens[out->app2_count++] = m->data_length;
            off += m->data_length;
        }
    }
}

// lsb_read_jpeg parses the header and APP2 markers of buf, and with
// want_pixels also decodes the scan to RGB.
static void lsb_read_jpeg(const unsigned char *buf, unsigned long size, int want_pixels, lsb_jpeg *out) {
    struct jpeg_decompress_struct cinfo;
    lsb_err_mgr jerr;

    memset(out, 0, sizeof(*out));
    cinfo.err = jpeg_std_error(&jerr.pub);
    jerr.pub.error_exit = lsb_error_exit;

    if (setjmp(jerr.jmpbuf)) {
        strncpy(out->msg, jerr.msg, sizeof(out->msg)-1);
        out->failed = 1;
        jpeg_destroy_decompress(&cinfo);
        return;
    }

    jpeg_create_decompress(&cinfo);
    jpeg_save_markers(&cinfo, JPEG_APP0+2, 0xFFFF);
    jpeg_mem_src(&cinfo, (unsigned char *)buf, size);
    jpeg_read_header(&cinfo, TRUE);

    out->width = cinfo.image_width;
    out->height = cinfo.image_height;
    out->components = cinfo.num_components;
    out->color_space = cinfo.jpeg_color_space;
    lsb_copy_app2(&cinfo, out);

    if (want_pixels) {
        cinfo.out_color_space = JCS_RGB;
        jpeg_start_decompress(&cinfo);
        out->width = cinfo.output_width;
        out->height = cinfo.output_height;
        out->components = cinfo.output_components;

        size_t stride = (size_t)out->width * out->components;
        if (out->height > 0 && stride > LSB_MAX_PIXEL_BYTES / out->height) {
            snprintf(out->msg, sizeof(out->msg), "image too large: %dx%d", out->width, out->height);
            out->failed = 1;
            jpeg_destroy_decompress(&cinfo);
            return;
        }
        out->pixels = (unsigned char *)malloc(stride * out->height);
        if (out->pixels == NULL) {
            strncpy(out->msg, "out of memory for pixel buffer", sizeof(out->msg)-1);
            out->failed = 1;
            jpeg_destroy_decompress(&cinfo);
            return;
        }
        while (cinfo.output_scanline < cinfo.output_height) {
            JSAMPROW row = out->pixels + cinfo.output_scanline * stride;
            jpeg_read_scanlines(&cinfo, &row, 1);
        }
        jpeg_finish_decompress(&cinfo);
    }

    jpeg_destroy_decompress(&cinfo);
}

static void lsb_jpeg_free(lsb_jpeg *j) {
    free(j->pixels);
    free(j->app2);
    free(j->app2_lens);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

// LibjpegVersion returns the JPEG library version.
func LibjpegVersion() int {
	return int(C.JPEG_LIB_VERSION)
}

// rawJPEG is lsb_jpeg copied into Go memory.
type rawJPEG struct {
	width      int
	height     int
	components int
	colorSpace int
	pixels     []byte // nil unless requested
	app2       [][]byte
}

func readJPEG(data []byte, wantPixels bool) (*rawJPEG, error) {
	if len(data) < 2 {
		return nil, errors.New("data too short for JPEG")
	}

	want := C.int(0)
	if wantPixels {
		want = 1
	}
	var out C.lsb_jpeg
	C.lsb_read_jpeg((*C.uchar)(unsafe.Pointer(&data[0])), C.ulong(len(data)), want, &out)
	defer C.lsb_jpeg_free(&out)

	if out.failed != 0 {
		return nil, fmt.Errorf("libjpeg: %s", C.GoString(&out.msg[0]))
	}

	raw := &rawJPEG{
		width:      int(out.width),
		height:     int(out.height),
		components: int(out.components),
		colorSpace: int(out.color_space),
	}
	if out.pixels != nil {
		n := raw.width * raw.height * raw.components
		raw.pixels = make([]byte, n)
		copy(raw.pixels, unsafe.Slice((*byte)(unsafe.Pointer(out.pixels)), n))
	}
	if out.app2_count > 0 {
		lens := unsafe.Slice(out.app2_lens, int(out.app2_count))
		all := C.GoBytes(unsafe.Pointer(out.app2), C.int(sumLens(lens)))
		for _, n := range lens {
			raw.app2 = append(raw.app2, all[:n:n])
			all = all[n:]
		}
	}
	return raw, nil
}

func sumLens(lens []C.uint) int {
	total := 0
	for _, n := range lens {
		total += int(n)
	}
	return total
}
