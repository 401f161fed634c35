/*
 * doc.go, part of gomisato.
 *
 * Copyright 2024 The gomisato authors
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

/*Package misato converts the per-atom records of the MISATO dataset into PDB lines.

The MISATO HDF5 files store, for each structure, flat per-atom arrays: coordinates,
atom type codes, residue codes, atomic numbers and the indexes at which each molecule
begins. Atom names, residue numbers and chain terminators are not stored. They are
rebuilt here from the code sequences and three lookup tables (type, residue and
canonical names, see Tables).

	**goMisato Capabilities**

    Rebuilds residue numbering, breaking residues at O-N backbone contacts and at
	ligands, and inserting TER lines between molecules (MDLines).

    Names polymer atoms from the canonical name table and ligand atoms from
	their element and position (AtomName).

    Writes QM snapshots, which carry no residue information (QMLines).

    Reads the MISATO HDF5 files (package h5), loads and caches the lookup tables
	(package maps), writes plain or compressed PDB files (package pdbw) and converts
	whole datasets concurrently (package batch).

The functions in this package keep all their state local, and a Tables is never
modified after it is built, so any number of frames or structures can be converted
at the same time.
*/
package misato
