/*
 * doc.go, part of nearmol.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package stf implements the simple trajectory format, a small, easy to read and write,
//zstd-compressed trajectory format. Besides the plain readers and writers, the package
//writes and reads whole universes, storing the topology of the frames in the header.
//All the frames of a universe written to stf must contain the same atoms, in the same order.
/******************** Format Specification   ***************************************************

An STF file has the extension stf, and it is compressed with z-standard (zstd).

A STF file may only contain ASCII symbols.

A STF file has a "header" starting in the first line, and ending with a line that starts with the
characters "**" followed by one or more spaces, and the number of atoms per frame.

Each line of the header must be a pair key=value. If a trajectory includes topology, this may be
included in the header with the key "topology" and a JSON string, describing the topology of one
frame, as defined in github.com/rmera/nearmol/chemjson, as a value. The precision (an integer
greater than 0, see below) must be included in the header, with the corresponding key "prec".
For example, a 'precision' line could be:

prec=2

After the header, the file has one line per atom, per frame. Each line contains 3 integers,
corresponding to the x y and z cartesian coordinates, respectively, and nothing more. Each
of these numbers is the respective coordinate in Angstrom, multiplied by 10 to the
power of (precision) and rounded to make it an integer. This package uses a default
precision of 2.

Each frame ends with a line starting with the character "*" (no whitespaces before), optionally
followed by one or more whitespace and 9 floating-point numbers separated by spaces. If present,
these numbers correspond to the vectors defining the simulation box, in Angstrom.

The "**" sequence may only be used as a header termination, as described above and can not appear
anywhere else in the file.

***************************************************************************************************/
package stf
